// Package catalog owns the personal book catalog and its on-disk JSON file.
//
// A Store is hydrated once from the file when it is opened and rewrites the
// whole file after every mutation. The file is a JSON array of objects with
// the keys title, author, years, genre and read, indented by four spaces with
// non-ASCII text written literally:
//
//	[
//	    {
//	        "title": "Dune",
//	        "author": "Frank Herbert",
//	        "years": "1965",
//	        "genre": "Science Fiction",
//	        "read": true
//	    }
//	]
//
// A missing or malformed file is not an error: the store starts empty and
// logs a warning. Titles are the deletion key and are compared without regard
// to case; nothing is unique, so duplicate titles are kept and deleted
// together.
package catalog
