// Package uniqid generates process-wide sequential and random identifiers.
package uniqid
