/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: samples.go
Description: Loader for labeled sample files used by passive learning. Files are YAML
(JSON is accepted as a subset):

	alphabet: [a, b]
	samples:
	  - word: [a]
	    accept: true
	  - word: [b, a]
	    accept: false
*/

package samples

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kleascm/alfbridge/pkg/words"
)

// File is the on-disk sample set
type File struct {
	Alphabet []string `yaml:"alphabet" json:"alphabet"`
	Samples  []Entry  `yaml:"samples" json:"samples"`
}

// Entry is one labeled word
type Entry struct {
	Word   []string `yaml:"word" json:"word"`
	Accept bool     `yaml:"accept" json:"accept"`
}

// Set is a decoded sample file ready for a passive learner
type Set struct {
	Alphabet *words.Alphabet[string]
	Samples  []*words.Sample[string, bool]
}

// Load reads a sample file from path
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample file: %w", err)
	}
	defer f.Close()

	set, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Decode parses a sample file. When the alphabet is omitted it is inferred from the
// samples in order of first appearance.
func Decode(r io.Reader) (*Set, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse samples: %w", err)
	}

	symbols := file.Alphabet
	if len(symbols) == 0 {
		symbols = inferAlphabet(file.Samples)
	}
	alphabet, err := words.NewAlphabet(symbols...)
	if err != nil {
		return nil, err
	}

	set := &Set{Alphabet: alphabet, Samples: make([]*words.Sample[string, bool], 0, len(file.Samples))}
	for i, e := range file.Samples {
		for _, sym := range e.Word {
			if !alphabet.Contains(sym) {
				return nil, fmt.Errorf("sample %d: symbol %q is not in the alphabet", i, sym)
			}
		}
		set.Samples = append(set.Samples, words.NewAnsweredQuery[string, bool](words.Word[string](e.Word), e.Accept))
	}
	return set, nil
}

// Encode writes a sample set in the file format
func Encode(w io.Writer, set *Set) error {
	file := File{Alphabet: set.Alphabet.Symbols()}
	for _, s := range set.Samples {
		out, ok := s.Output()
		if !ok {
			return fmt.Errorf("sample %s has no label", s.Input)
		}
		file.Samples = append(file.Samples, Entry{Word: append([]string{}, s.Input...), Accept: out})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return err
	}
	return enc.Close()
}

func inferAlphabet(entries []Entry) []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, e := range entries {
		for _, sym := range e.Word {
			if !seen[sym] {
				seen[sym] = true
				symbols = append(symbols, sym)
			}
		}
	}
	return symbols
}
