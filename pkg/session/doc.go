/*
Package session runs traversals against persisted answer sets.

A Manager serializes work on a session ID (a refcounted local mutex, plus an
optional DistributedLocker for multi-replica deployments), seeds each
traversal with the stored answers and saves the result. With checkpointing
enabled, answers are also saved after every accepted question so an
interrupted run resumes where it stopped.
*/
package session
