// Package fundwatch follows the monthly portfolio disclosures of mutual funds.
//
// Fund houses publish, every month, the list of securities each fund holds with their quantity and
// weight in the fund net asset value. fundwatch turns these files into reports of what changed:
//   - Parsing: ParseSnapshot reads the raw rows of a disclosure (xlsx, csv or json, see ReadTable)
//     into a Snapshot, locating the header row and dropping section labels and total lines.
//   - Resolution: a Resolver links the holdings of consecutive snapshots that designate the same
//     security, by identifier, then by name, then by similar names (see Scorer). Linked holdings
//     form a SecurityIdentity.
//   - Delta: a DeltaEngine classifies each security between two months as added, removed,
//     increased, decreased or unchanged, and follows the weight of securities over time.
//
// A Catalog lists the disclosure files of a data folder, and an Analysis ties everything together
// for the `mfw` command-line tool.
package fundwatch
