/*
Package runner provides Prompter implementations that connect the traversal
engine to a user.

# Prompters

  - TextPrompter: line-based terminal or pipe interaction. Options are
    numbered, ":back" and ":cancel" navigate.
  - FormPrompter: interactive forms rendered with charmbracelet/huh.
  - JSONPrompter: NDJSON questions on the writer, replies on the reader,
    for driving a traversal from another process.

Every prompter re-asks until the request's Validate hook accepts the answer,
and passes free text through SanitizeInput.

# Usage

	engine := runtime.NewEngine(runner.NewTextPrompter(os.Stdin, os.Stdout), resolver)
	answers, err := engine.Traverse(ctx, root, nil)
*/
package runner
