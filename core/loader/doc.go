// Package loader provides the feature loading system.
//
// Each HTTP feature (catalog, requests, ledger, snapshot, integrity) implements Feature
// and is registered on a Manager at startup. LoadAll mounts the routes of every enabled
// feature; a feature whose dependencies are missing, such as snapshot export without
// object storage, reports itself disabled and is skipped.
package loader
