// Package database opens the sqlite journal and applies its schema.
package database
