// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"

	"github.com/ik5/modload/module"
)

type sampleInfo struct {
	Index     int    `yaml:"index"`
	Name      string `yaml:"name,omitempty"`
	Length    int    `yaml:"length"`
	Bits      int    `yaml:"bits"`
	LoopStart int    `yaml:"loop_start,omitempty"`
	LoopEnd   int    `yaml:"loop_end,omitempty"`
	Synth     bool   `yaml:"synth,omitempty"`
}

type instrumentInfo struct {
	Index   int    `yaml:"index"`
	Name    string `yaml:"name,omitempty"`
	Kind    string `yaml:"kind"`
	Samples []int  `yaml:"samples,flow,omitempty"`
}

type summary struct {
	File        string           `yaml:"file"`
	Name        string           `yaml:"name"`
	Type        string           `yaml:"type"`
	Channels    int              `yaml:"channels"`
	Length      int              `yaml:"length"`
	Speed       int              `yaml:"speed"`
	BPM         int              `yaml:"bpm"`
	C4Rate      int              `yaml:"c4rate"`
	Patterns    int              `yaml:"patterns"`
	Tracks      int              `yaml:"tracks"`
	Order       []int            `yaml:"order,flow"`
	Instruments []instrumentInfo `yaml:"instruments,omitempty"`
	Samples     []sampleInfo     `yaml:"samples,omitempty"`
}

func summarize(path string, m *module.Module) summary {
	s := summary{
		File:     path,
		Name:     m.Name,
		Type:     m.Type,
		Channels: m.Channels,
		Length:   m.Length,
		Speed:    m.Speed,
		BPM:      m.BPM,
		C4Rate:   m.C4Rate,
		Patterns: len(m.Patterns),
		Tracks:   len(m.Tracks),
		Order:    m.Order,
	}

	for i, ins := range m.Instruments {
		info := instrumentInfo{Index: i + 1, Name: ins.Name, Kind: ins.Kind.String()}
		for _, sub := range ins.Subs {
			info.Samples = append(info.Samples, sub.Sample+1)
		}
		s.Instruments = append(s.Instruments, info)
	}

	for i, smp := range m.Samples {
		info := sampleInfo{
			Index:  i + 1,
			Name:   smp.Name,
			Length: smp.Length,
			Bits:   8,
			Synth:  smp.Flags&module.SampleSynth != 0,
		}
		if smp.Is16Bit() {
			info.Bits = 16
		}
		if smp.Looped() {
			info.LoopStart, info.LoopEnd = smp.LoopStart, smp.LoopEnd
		}
		s.Samples = append(s.Samples, info)
	}
	return s
}

func (s summary) writeText(w io.Writer) {
	fmt.Fprintf(w, "File:     %s\n", s.File)
	fmt.Fprintf(w, "Name:     %s\n", s.Name)
	fmt.Fprintf(w, "Type:     %s\n", s.Type)
	fmt.Fprintf(w, "Channels: %d\n", s.Channels)
	fmt.Fprintf(w, "Length:   %d %v\n", s.Length, s.Order)
	fmt.Fprintf(w, "Tempo:    speed %d, %d BPM, C4 %d Hz\n", s.Speed, s.BPM, s.C4Rate)
	fmt.Fprintf(w, "Patterns: %d (%d tracks)\n", s.Patterns, s.Tracks)

	if len(s.Instruments) > 0 {
		fmt.Fprintln(w, "Instruments:")
		for _, ins := range s.Instruments {
			fmt.Fprintf(w, "  %02d %-22s %-6s %v\n", ins.Index, ins.Name, ins.Kind, ins.Samples)
		}
	}
	if len(s.Samples) > 0 {
		fmt.Fprintln(w, "Samples:")
		for _, smp := range s.Samples {
			loop := "-"
			if smp.LoopEnd > 0 {
				loop = fmt.Sprintf("%d-%d", smp.LoopStart, smp.LoopEnd)
			}
			fmt.Fprintf(w, "  %02d %-22s %7d %2d-bit loop %s\n", smp.Index, smp.Name, smp.Length, smp.Bits, loop)
		}
	}
}
