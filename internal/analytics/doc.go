// Package analytics derives statistics from snapshots of daily logs and episodes.
//
// Every function is pure: it reads the records it is given plus an explicit
// reference time and never touches a store or the wall clock. Callers fetch
// a fresh snapshot per call, so there is nothing to cache or invalidate.
package analytics
