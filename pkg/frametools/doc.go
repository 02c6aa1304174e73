// Package frametools implements the data preparation steps leapframe is built
// around:
//
//   - [Merge] joins two tables and tags each output row with a [Status]
//     telling whether it came from the left table, the right table or both.
//     It can assert that every row has one status.
//   - [GroupID] numbers the distinct combinations of a set of columns and can
//     merge the number back onto the source table.
//   - [Winsorize] drops rows outside per-column quantile cutoffs.
//
// All functions copy their inputs before changing anything.
package frametools
