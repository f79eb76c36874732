/*
Package domain contains the core models of the wizard engine.

It defines the static question tree, the answers collected while walking it and
the outcomes of each step. This package is kept pure and free of I/O so that
any front end (terminal, web form, test double) can share it.

# Key Entities

  - Node: a Group (routing only) or a Leaf carrying a Question; child edges may carry a Condition.
  - Question: what to ask, how to compute its default and options, and how to validate the answer.
  - Rule: one validation constraint. Conditions and validations share the same rule set.
  - AnswerStore: question name to accepted value.
  - NavigationResult: Success, Pass, Cancel, Back or Error.
*/
package domain
