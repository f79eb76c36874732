package middleware

import "github.com/aretw0/wizard/pkg/ports"

// Middleware wraps an AnswerRepository to add behavior.
type Middleware func(ports.AnswerRepository) ports.AnswerRepository

// Chain applies mws to repo. The first middleware is the outermost one.
func Chain(repo ports.AnswerRepository, mws ...Middleware) ports.AnswerRepository {
	for i := len(mws) - 1; i >= 0; i-- {
		repo = mws[i](repo)
	}
	return repo
}
