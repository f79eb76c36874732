// Package validation evaluates domain.Rules against candidate answers.
//
// Rules are evaluated in a fixed stage order and the first failure wins:
//
//  1. Required
//  2. RemoteFunc (fails open when the resolver errors)
//  3. LocalFunc
//  4. FileExists / FileNotExist
//  5. Equals, OneOf, TypeOf, Pattern, MinLength, MaxLength
//  6. StartsWith, EndsWith, Contains
//  7. ContainsAll, ContainsAny
//
// The same evaluator decides edge conditions in a question tree: an edge is
// taken when its rules produce no message.
package validation
