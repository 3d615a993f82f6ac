// Package taxonomy turns the catalog's tag page into an icon-key → category
// [Mapping].
//
// The page is not parsed structurally. It is split into chunks at every
// category heading (`<h3 id="`); the heading's id is the category, and every
// `href="/…/<slug>.html"` inside the chunk names an icon filed under it. The
// first category an icon appears under wins for the whole document.
package taxonomy
