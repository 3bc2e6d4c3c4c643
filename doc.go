// Package photomosaic creates photographic mosaics: a source image is divided
// into square patches and each patch is replaced by the tile of a database
// whose signature (the average colors of its four quadrants) is closest.
// Tiles placed nearby are penalized so that a mosaic does not repeat the same
// tile over and over.
//
// Tile databases are created from directories of images with BuildDatabase,
// they are stored as CSV files or SQLite databases.
//
// It ships with executable programs to create mosaics, build tile databases
// and an interactive shell.
package photomosaic
