// Package sitecrawl provides a same-site web crawl engine: given a root
// URL it discovers and fetches every reachable page sharing the root's
// prefix with a bounded pool of concurrent workers, streaming each page
// to the consumer as soon as it is available.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency or concern
// (e.g., crawl/, goquery/, http/, fs/).
package sitecrawl
