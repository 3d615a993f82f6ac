// Package naming maps on-disk icon filenames to catalog keys and destination
// paths.
//
// Key normalization runs the ordered [Rules] table against the filename stem;
// the first matching rule decides and no later rule is consulted. Category
// resolution never fails: keys missing from the catalog land in
// [DefaultCategory]. Destination collisions within a run (or with files
// already on disk) are handled once per file by [CollisionResolver].
package naming
