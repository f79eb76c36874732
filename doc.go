/*
Package wizard is a question-tree traversal engine for building interactive CLIs and guided setup flows.

A wizard is a tree of nodes. Groups route, leaves ask exactly one question, and the edges between them may carry conditions evaluated against the answer of the nearest ancestor question. The engine walks the tree depth-first with an explicit stack, asks each reachable question through a Prompter, evaluates function-valued defaults, options and validations through a RemoteResolver, and supports going back to the previous real question.

# Concept

The engine only owns the traversal. Input and output belong to the Prompter (terminal forms, plain text, NDJSON), side effects belong to the RemoteResolver (in-process registry, HTTP function server, external commands) and persistence belongs to an AnswerRepository (memory, JSON files, Redis). This Hexagonal Architecture allows the same tree to be answered from a terminal, an automated pipeline or an AI agent.

# Key Features

  - Conditional branches: child edges are taken only when their rules pass for the parent answer.
  - Back navigation: a "Back" answer returns to the previous question that actually stopped for input.
  - Ordered validation: required, remote, local, file, schema, string and array checks, first failure wins.
  - Seeding: answers already present are accepted without prompting, so sessions can be resumed.

# Usage

	b := dsl.New("new-app")
	b.Text("appName").Title("Application name").Required()
	env := b.Select("env", "dev", "prod")
	env.Text("devUrl").If(domain.Equals{Value: "dev"})

	w, err := wizard.New(runner.NewFormPrompter(), wizard.WithResolver(registry.NewRegistry()))
	if err != nil {
		log.Fatal(err)
	}

	answers, err := w.Traverse(ctx, b.MustBuild(), nil)
	switch {
	case wizard.IsCancelled(err):
		// user aborted
	case err != nil:
		log.Fatal(err)
	}

Question trees can also be declared in YAML and loaded with package loader.
*/
package wizard
