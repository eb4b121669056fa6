package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"bookshelf/internal/catalog"
)

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
)

var bookHeaders = []string{"#", "Title", "Author", "Year", "Genre", "Status"}

var bookAligns = []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}

func buildBookRows(books []catalog.Book, colorize bool) [][]string {
	rows := make([][]string, 0, len(books))
	for i, book := range books {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			book.Title,
			book.Author,
			string(book.Year),
			book.Genre,
			statusCell(book, colorize),
		})
	}
	return rows
}

func statusCell(book catalog.Book, colorize bool) string {
	status := book.Status()
	if !colorize {
		return status
	}
	if book.Read {
		return ansiGreen + status + ansiReset
	}
	return ansiYellow + status + ansiReset
}

// renderBooks writes books as a table, or as one summary line per book when
// plain is set.
func renderBooks(out io.Writer, books []catalog.Book, plain, colorize bool) {
	if plain {
		for _, book := range books {
			fmt.Fprintln(out, book.String())
		}
		return
	}
	fmt.Fprint(out, renderTable(bookHeaders, buildBookRows(books, colorize), bookAligns))
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
