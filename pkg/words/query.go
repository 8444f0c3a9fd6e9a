/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: query.go
Description: Queries pair an input word with an output. Membership oracles answer
queries in place; passive learners consume answered queries as labeled samples;
counterexamples are answered queries on which the hypothesis is wrong.
*/

package words

import "fmt"

// Query is an input word together with its (possibly pending) output
type Query[I comparable, D any] struct {
	Input    Word[I]
	output   D
	answered bool
}

// NewQuery creates an unanswered query for the given input
func NewQuery[I comparable, D any](input Word[I]) *Query[I, D] {
	return &Query[I, D]{Input: input}
}

// NewAnsweredQuery creates a query whose output is already known
func NewAnsweredQuery[I comparable, D any](input Word[I], output D) *Query[I, D] {
	return &Query[I, D]{Input: input, output: output, answered: true}
}

// Answer records the output for the query
func (q *Query[I, D]) Answer(output D) {
	q.output = output
	q.answered = true
}

// Output returns the recorded output and whether the query has been answered
func (q *Query[I, D]) Output() (D, bool) {
	return q.output, q.answered
}

// Answered reports whether an output has been recorded
func (q *Query[I, D]) Answered() bool {
	return q.answered
}

func (q *Query[I, D]) String() string {
	if !q.answered {
		return fmt.Sprintf("Query[%s | ?]", q.Input)
	}
	return fmt.Sprintf("Query[%s | %v]", q.Input, q.output)
}

// Sample is an answered query used as labeled training data
type Sample[I comparable, D any] = Query[I, D]
