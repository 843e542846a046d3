// Package utils provides small helpers shared by the HTTP features.
package utils
