/*
Package dsl provides a fluent builder for question trees.

It is the programmatic counterpart of the YAML loader: trees are assembled in
Go with type-checked rules instead of loosely typed maps.

Example usage:

	b := dsl.New("new-app")

	env := b.Select("env", "dev", "prod").Title("Environment")
	env.Text("devUrl").If(domain.Equals{Value: "dev"}).Required()
	env.Text("prodUrl").If(domain.Equals{Value: "prod"}).Required()

	b.Func("createdAt", "now", nil)

	tree, err := b.Build()
*/
package dsl
