// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shopping

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Catalog for unknown ids.
var ErrNotFound = errors.New("shopping: not found")

// Customer is a customer record.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
}

// Article is an article record.
type Article struct {
	ID   int
	Name string
}

// Catalog resolves the domain records the vocabulary looks up.
type Catalog interface {
	Customer(id int) (Customer, error)
	Article(id int) (Article, error)
}

// SyntheticCatalog synthesizes every record from its id.
// Customers are named "first" "last", articles "article".
type SyntheticCatalog struct{}

func (SyntheticCatalog) Customer(id int) (Customer, error) {
	return Customer{ID: int64(id), FirstName: "first", LastName: "last"}, nil
}

func (SyntheticCatalog) Article(id int) (Article, error) {
	return Article{ID: id, Name: "article"}, nil
}

// MapCatalog serves records from maps keyed by id.
type MapCatalog struct {
	Customers map[int]Customer
	Articles  map[int]Article
}

func (c MapCatalog) Customer(id int) (Customer, error) {
	if cu, ok := c.Customers[id]; ok {
		return cu, nil
	}
	return Customer{}, fmt.Errorf("%w: customer %d", ErrNotFound, id)
}

func (c MapCatalog) Article(id int) (Article, error) {
	if a, ok := c.Articles[id]; ok {
		return a, nil
	}
	return Article{}, fmt.Errorf("%w: article %d", ErrNotFound, id)
}
