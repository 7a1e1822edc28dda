// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shopping

import "code.hybscloud.com/eff"

// Example is the canonical fork/join program written as an explicit
// tree: fork a customer lookup and an article lookup, join both, and
// concatenate the customer's first name with the article name.
// With SyntheticCatalog it yields "firstarticle".
func Example() eff.Tree[string] {
	return eff.Suspend(Fork[Customer]{Computation: FetchCustomer(1)}, func(cf *Future[Customer]) eff.Tree[string] {
		return eff.Suspend(Fork[Article]{Computation: FetchArticle(1)}, func(af *Future[Article]) eff.Tree[string] {
			return eff.Suspend(Join[Customer]{Future: cf}, func(c Customer) eff.Tree[string] {
				return eff.Map(Await(af), func(a Article) string {
					return c.FirstName + a.Name
				})
			})
		})
	})
}

// ExampleDSL is Example written in direct style. Each call builds a new
// single-use tree.
func ExampleDSL() eff.Tree[string] {
	return Build(func(d *DSL) string {
		cf := ForkIn(d, Build(func(d *DSL) Customer { return d.GetCustomer(1) }))
		af := ForkIn(d, Build(func(d *DSL) Article { return d.GetArticle(1) }))
		c := JoinIn(d, cf)
		a := JoinIn(d, af)
		return c.FirstName + a.Name
	})
}
