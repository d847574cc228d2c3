// file: internal/ui/app.go
// version: 1.0.0
// guid: 1a3c5e7f-9b1d-4a3c-8e7f-9b1d3a5c7e9f

// Package ui is the interactive shell over a book catalog: a menu of
// actions, input prompts, and styled result boxes.
package ui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jdfalk/library-catalog/internal/catalog"
)

// Catalog is the set of catalog operations the shell drives.
type Catalog interface {
	Add(id, title, author, year string) (catalog.Result, error)
	View() catalog.Result
	Update(id, title, author, year string) (catalog.Result, error)
	Delete(id string) (catalog.Result, error)
	Search(keyword string) catalog.Result
	SortByTitle() (catalog.Result, error)
	SortByYear() (catalog.Result, error)
	ImportFrom(path string) (catalog.Result, error)
}

// Menu entries, in display order.
const (
	MenuAdd       = "Add Book"
	MenuView      = "View Books"
	MenuUpdate    = "Update Book"
	MenuDelete    = "Delete Book"
	MenuSearch    = "Search Books"
	MenuImport    = "Import Books from CSV"
	MenuSortTitle = "Sort Books by Title"
	MenuSortYear  = "Sort Books by Year"
	MenuExit      = "Exit"
)

// MenuItems lists the shell actions.
var MenuItems = []string{
	MenuAdd, MenuView, MenuUpdate, MenuDelete, MenuSearch,
	MenuImport, MenuSortTitle, MenuSortYear, MenuExit,
}

const keepBlank = "Leave blank to keep unchanged"

// App binds a catalog to a prompter and an output stream.
type App struct {
	catalog Catalog
	prompt  Prompter
	out     io.Writer
	logger  *slog.Logger
}

// NewApp creates the shell. A nil logger falls back to slog.Default.
func NewApp(c Catalog, p Prompter, out io.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{catalog: c, prompt: p, out: out, logger: logger}
}

// Run shows the menu until Exit is picked or the menu is cancelled.
func (a *App) Run() error {
	fmt.Fprintln(a.out, Styles.Title.Render("Library Management System"))
	for {
		choice, err := a.prompt.Choose("What would you like to do?", MenuItems)
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		if choice == MenuExit {
			return nil
		}
		if err := a.Dispatch(choice); err != nil {
			return err
		}
	}
}

// Dispatch runs the action for one menu entry. Only prompt failures are
// returned; catalog errors are shown and the shell carries on.
func (a *App) Dispatch(choice string) error {
	switch choice {
	case MenuAdd:
		return a.AddBook()
	case MenuView:
		a.ViewBooks()
	case MenuUpdate:
		return a.UpdateBook()
	case MenuDelete:
		return a.DeleteBook()
	case MenuSearch:
		return a.SearchBooks()
	case MenuImport:
		return a.ImportBooks()
	case MenuSortTitle:
		a.SortByTitle()
	case MenuSortYear:
		a.SortByYear()
	default:
		return fmt.Errorf("unknown menu entry %q", choice)
	}
	return nil
}

// AddBook asks for the four fields and adds the book.
func (a *App) AddBook() error {
	id, err := a.prompt.Ask("Enter book ID:", "")
	if err != nil {
		return err
	}
	if !IsNonEmpty(id) {
		a.showError(MsgEmptyID)
		return nil
	}

	fields, err := a.askAll([]string{"Enter book title:", "Enter book author:", "Enter publication year:"}, "")
	if err != nil {
		return err
	}
	if msg := ValidateBook(id, fields[2]); msg != "" {
		a.showError(msg)
		return nil
	}

	a.show(a.catalog.Add(id, fields[0], fields[1], fields[2]))
	return nil
}

// ViewBooks writes the listing to the output.
func (a *App) ViewBooks() {
	fmt.Fprintln(a.out, a.catalog.View().Message)
}

// UpdateBook asks for an id and replacement fields; blanks keep the old value.
func (a *App) UpdateBook() error {
	id, err := a.prompt.Ask("Enter book ID to update:", "")
	if err != nil {
		return err
	}
	if !IsNonEmpty(id) {
		a.showError(MsgEmptyID)
		return nil
	}

	fields, err := a.askAll([]string{"Enter new title:", "Enter new author:", "Enter new year:"}, keepBlank)
	if err != nil {
		return err
	}
	if msg := ValidateBook(id, fields[2]); msg != "" {
		a.showError(msg)
		return nil
	}

	a.show(a.catalog.Update(id, fields[0], fields[1], fields[2]))
	return nil
}

// DeleteBook asks for an id and removes that book.
func (a *App) DeleteBook() error {
	id, err := a.prompt.Ask("Enter book ID to delete:", "")
	if err != nil {
		return err
	}
	if !IsNonEmpty(id) {
		a.showError(MsgEmptyID)
		return nil
	}

	a.show(a.catalog.Delete(id))
	return nil
}

// SearchBooks asks for a keyword and shows the matches.
func (a *App) SearchBooks() error {
	keyword, err := a.prompt.Ask("Enter keyword to search:", "")
	if err != nil {
		return err
	}
	if !IsNonEmpty(keyword) {
		a.showError(MsgEmptyKeyword)
		return nil
	}

	fmt.Fprintln(a.out, RenderResult("Search Results", a.catalog.Search(keyword)))
	return nil
}

// ImportBooks asks for a CSV file and imports it. No file picked, no import.
func (a *App) ImportBooks() error {
	path, err := a.prompt.PickFile("Select CSV File", []string{".csv"})
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	a.show(a.catalog.ImportFrom(path))
	return nil
}

// SortByTitle sorts and persists the catalog by title.
func (a *App) SortByTitle() {
	a.show(a.catalog.SortByTitle())
}

// SortByYear sorts and persists the catalog by year.
func (a *App) SortByYear() {
	a.show(a.catalog.SortByYear())
}

func (a *App) askAll(titles []string, description string) ([]string, error) {
	answers := make([]string, len(titles))
	for i, title := range titles {
		v, err := a.prompt.Ask(title, description)
		if err != nil {
			return nil, err
		}
		answers[i] = v
	}
	return answers, nil
}

func (a *App) show(res catalog.Result, err error) {
	if err != nil {
		a.logger.Error("catalog operation failed", "error", err)
		a.showError(err.Error())
		return
	}
	fmt.Fprintln(a.out, RenderResult("Result", res))
}

func (a *App) showError(msg string) {
	fmt.Fprintln(a.out, RenderError(msg))
}
