// Package catalog downloads the remote taxonomy page.
//
// The fetcher presents a desktop-browser User-Agent (the catalog rejects
// obvious bots) and can skip TLS certificate verification for endpoints with
// broken chains. Responses are decoded to UTF-8 from whatever charset the
// server declares. Failures come back as *[Error] with an [ErrorKind].
package catalog
