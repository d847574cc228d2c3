// file: internal/models/book.go
// version: 2.0.0
// guid: 3f1c9a7e-52d4-4b8e-9a61-0c7e2d5b8f14

package models

import "fmt"

// Book represents a single catalog record. All fields are kept as text;
// Year is validated by callers, never parsed here.
type Book struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Year   string `json:"year" yaml:"year"`
}

// String renders the book the way it is shown to users.
func (b Book) String() string {
	return fmt.Sprintf("ID: %s, Title: %s, Author: %s, Year: %s", b.ID, b.Title, b.Author, b.Year)
}

// Record returns the CSV cells for the book in id,title,author,year order.
func (b Book) Record() []string {
	return []string{b.ID, b.Title, b.Author, b.Year}
}
