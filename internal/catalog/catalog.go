// file: internal/catalog/catalog.go
// version: 1.0.0
// guid: 7c9e1a3b-5d7f-4c9e-a1b3-5d7f9c1e3a5b

// Package catalog keeps an ordered, in-memory collection of books in sync
// with a CSV backing file. Every mutating operation rewrites the whole file.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/jdfalk/library-catalog/internal/matcher"
	"github.com/jdfalk/library-catalog/internal/models"
	"golang.org/x/text/cases"
)

// Operation names reported to observers.
const (
	OpAdd       = "add"
	OpView      = "view"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpSearch    = "search"
	OpSortTitle = "sort_title"
	OpSortYear  = "sort_year"
	OpImport    = "import"
)

// Observer is called after every public operation. err is non-nil only
// when the backing file could not be written.
type Observer func(operation string, res Result, err error, elapsed time.Duration, books int)

// ProgressFunc receives import progress as rows are processed.
type ProgressFunc func(done, total int)

// Option configures a Catalog.
type Option func(*Catalog)

// WithAtomicWrites stages every save in a temp file and renames it into place.
func WithAtomicWrites(enabled bool) Option {
	return func(c *Catalog) { c.atomic = enabled }
}

// WithLogger sets the logger used for persistence events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers an operation observer (metrics).
func WithObserver(observer Observer) Option {
	return func(c *Catalog) { c.observer = observer }
}

// WithImportProgress registers a progress callback for ImportFrom.
func WithImportProgress(fn ProgressFunc) Option {
	return func(c *Catalog) { c.progress = fn }
}

// Catalog is a book collection bound to one CSV file. It is not safe for
// concurrent use.
type Catalog struct {
	path     string
	books    []models.Book
	atomic   bool
	logger   *slog.Logger
	observer Observer
	progress ProgressFunc
}

// Open creates a Catalog bound to path and seeds it from the file. A missing
// file yields an empty catalog; rows reusing an earlier id are dropped.
func Open(path string, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.load(); err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	return c, nil
}

func (c *Catalog) load() error {
	rows, err := readBooks(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		c.logger.Debug("catalog file not found, starting empty", "path", c.path)
		return nil
	}
	if err != nil {
		return err
	}

	skipped := 0
	for _, b := range rows {
		if !c.insert(b) {
			skipped++
		}
	}
	c.logger.Debug("catalog loaded", "path", c.path, "books", len(c.books), "skipped", skipped)
	return nil
}

// Path returns the backing file path.
func (c *Catalog) Path() string { return c.path }

// Len returns the number of books.
func (c *Catalog) Len() int { return len(c.books) }

// Books returns a copy of the books in current order.
func (c *Catalog) Books() []models.Book {
	return slices.Clone(c.books)
}

// Save rewrites the backing file from memory. Rows dropped while loading
// are gone from the file afterwards.
func (c *Catalog) Save() error {
	return c.save()
}

// Add appends a new book unless its id is already taken.
func (c *Catalog) Add(id, title, author, year string) (res Result, err error) {
	defer c.observe(OpAdd, time.Now(), &res, &err)

	if !c.insert(models.Book{ID: id, Title: title, Author: author, Year: year}) {
		return Result{Outcome: Duplicate, Message: fmt.Sprintf("Book ID %s already exists!", id)}, nil
	}
	if err = c.save(); err != nil {
		return Result{}, err
	}
	return Result{Outcome: Success, Message: fmt.Sprintf("Book '%s' added successfully!", title)}, nil
}

// View renders every book, one per line.
func (c *Catalog) View() (res Result) {
	defer c.observe(OpView, time.Now(), &res, nil)

	if len(c.books) == 0 {
		return Result{Outcome: Empty, Message: "No books in the library."}
	}
	return Result{Outcome: Success, Message: render(c.books)}
}

// Update overwrites the non-empty fields of the first book with id.
func (c *Catalog) Update(id, title, author, year string) (res Result, err error) {
	defer c.observe(OpUpdate, time.Now(), &res, &err)

	i := c.indexOf(id)
	if i < 0 {
		return notFound(id), nil
	}

	b := &c.books[i]
	if title != "" {
		b.Title = title
	}
	if author != "" {
		b.Author = author
	}
	if year != "" {
		b.Year = year
	}

	if err = c.save(); err != nil {
		return Result{}, err
	}
	return Result{Outcome: Success, Message: fmt.Sprintf("Book ID %s updated successfully!", id)}, nil
}

// Delete removes the first book with id.
func (c *Catalog) Delete(id string) (res Result, err error) {
	defer c.observe(OpDelete, time.Now(), &res, &err)

	i := c.indexOf(id)
	if i < 0 {
		return notFound(id), nil
	}

	c.books = slices.Delete(c.books, i, i+1)
	if err = c.save(); err != nil {
		return Result{}, err
	}
	return Result{Outcome: Success, Message: fmt.Sprintf("Book ID %s deleted successfully!", id)}, nil
}

// Search returns books whose title or author contains keyword, ignoring case.
func (c *Catalog) Search(keyword string) (res Result) {
	defer c.observe(OpSearch, time.Now(), &res, nil)

	fold := cases.Fold()
	needle := fold.String(keyword)

	var matches []models.Book
	for _, b := range c.books {
		if strings.Contains(fold.String(b.Title), needle) || strings.Contains(fold.String(b.Author), needle) {
			matches = append(matches, b)
		}
	}

	if len(matches) == 0 {
		return Result{Outcome: NoMatches, Message: "No books found matching the keyword."}
	}
	return Result{Outcome: Success, Message: render(matches)}
}

// SortByTitle stably reorders the catalog by title and persists the order.
func (c *Catalog) SortByTitle() (res Result, err error) {
	defer c.observe(OpSortTitle, time.Now(), &res, &err)

	slices.SortStableFunc(c.books, func(a, b models.Book) int {
		return strings.Compare(a.Title, b.Title)
	})
	if err = c.save(); err != nil {
		return Result{}, err
	}
	return Result{Outcome: Success, Message: "Books sorted by title!"}, nil
}

// SortByYear stably reorders the catalog by the year text and persists the
// order. Years are compared as strings.
func (c *Catalog) SortByYear() (res Result, err error) {
	defer c.observe(OpSortYear, time.Now(), &res, &err)

	slices.SortStableFunc(c.books, func(a, b models.Book) int {
		return strings.Compare(a.Year, b.Year)
	})
	if err = c.save(); err != nil {
		return Result{}, err
	}
	return Result{Outcome: Success, Message: "Books sorted by year!"}, nil
}

// ImportFrom adds every row of the CSV file at path, in file order. Rows
// with an id already in the catalog are skipped without being reported; the
// result covers the whole file.
func (c *Catalog) ImportFrom(path string) (res Result, err error) {
	defer c.observe(OpImport, time.Now(), &res, &err)

	rows, readErr := readBooks(path)
	if errors.Is(readErr, fs.ErrNotExist) {
		return Result{Outcome: ImportFileMissing, Message: fmt.Sprintf("File %s not found.", path)}, nil
	}
	if readErr != nil {
		c.logger.Warn("import failed", "path", path, "error", readErr)
		return Result{Outcome: ImportFailed, Message: readErr.Error()}, nil
	}

	added := 0
	for i, b := range rows {
		if c.insert(b) {
			added++
		}
		if c.progress != nil {
			c.progress(i+1, len(rows))
		}
	}

	if added > 0 {
		if err = c.save(); err != nil {
			return Result{}, err
		}
	}
	c.logger.Debug("import finished", "path", path, "rows", len(rows), "added", added, "skipped", len(rows)-added)
	return Result{Outcome: Success, Message: "Books imported successfully from CSV file!"}, nil
}

// Suggest returns up to limit books loosely matching keyword, best first.
// It is meant for "did you mean" hints after a search with no matches.
func (c *Catalog) Suggest(keyword string, limit int) []models.Book {
	candidates := make([]string, len(c.books))
	for i, b := range c.books {
		candidates[i] = b.Title + " " + b.Author
	}

	var out []models.Book
	for _, r := range matcher.Rank(keyword, candidates, matcher.DefaultMinScore) {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, c.books[r.Index])
	}
	return out
}

// insert appends b unless its id is taken.
func (c *Catalog) insert(b models.Book) bool {
	if c.indexOf(b.ID) >= 0 {
		return false
	}
	c.books = append(c.books, b)
	return true
}

func (c *Catalog) indexOf(id string) int {
	return slices.IndexFunc(c.books, func(b models.Book) bool { return b.ID == id })
}

func (c *Catalog) observe(op string, start time.Time, res *Result, err *error) {
	if c.observer == nil {
		return
	}
	var opErr error
	if err != nil {
		opErr = *err
	}
	c.observer(op, *res, opErr, time.Since(start), len(c.books))
}

func notFound(id string) Result {
	return Result{Outcome: NotFound, Message: fmt.Sprintf("No book found with ID %s", id)}
}

func render(books []models.Book) string {
	lines := make([]string, len(books))
	for i, b := range books {
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
