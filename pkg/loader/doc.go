// Package loader reads question trees from YAML.
//
// A document is a single root node. Nodes with a type are questions, nodes
// without one are groups. Both "validation" and "when" use the same rule
// vocabulary: required, func, local, exists, notExist, equals, enum, type,
// pattern, minLength, maxLength, startsWith, endsWith, contains, containsAll
// and containsAny.
package loader
