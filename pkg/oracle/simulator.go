/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: simulator.go
Description: Simulator oracle answering membership queries from a known acceptor.
Used as a stand-in system under learning and in tests.
*/

package oracle

import (
	"context"

	"github.com/kleascm/alfbridge/pkg/automaton"
	"github.com/kleascm/alfbridge/pkg/words"
)

// Simulator answers queries by running them on target
type Simulator[I comparable] struct {
	target automaton.Acceptor[I]
}

// NewSimulator creates a simulator oracle for target
func NewSimulator[I comparable](target automaton.Acceptor[I]) *Simulator[I] {
	return &Simulator[I]{target: target}
}

// ProcessQueries answers every query in the batch
func (s *Simulator[I]) ProcessQueries(ctx context.Context, queries []*words.Query[I, bool]) error {
	for _, q := range queries {
		q.Answer(s.target.Accepts(q.Input))
	}
	return nil
}
