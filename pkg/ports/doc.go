/*
Package ports defines the interfaces the wizard engine consumes.

These interfaces decouple the traversal logic from whoever renders questions,
computes remote data, or stores answers.

# Key Interfaces

  - Prompter: renders one question and returns the user's decision (answer, back or cancel).
  - RemoteResolver: evaluates function descriptors for defaults, options and validation.
  - AnswerRepository: persists answer sets for resuming or pre-filling traversals.
  - DistributedLocker: coordinates access to a session across processes.
  - TreeLoader: produces the question tree.
*/
package ports
