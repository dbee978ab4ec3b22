// Package pathway loads pathway-level differential data for Mondrian maps.
//
// A dataset is a CSV file with one row per pathway. The required columns are:
//
//	GS_ID   pathway identifier (e.g. WAG002659)
//	wFC     weighted fold change
//	pFDR    false-discovery-rate adjusted p-value
//	x, y    canvas coordinates of the pathway
//	NAME    display name
//
// Any other columns are kept as annotations. Malformed rows are collected as
// [errors.ValidationError] values on the [Dataset] instead of failing the
// whole load, so a file with a few bad rows still produces a map.
//
// Two optional companion inputs enrich a dataset:
//
//   - A relations CSV (columns GS_A_ID, GS_B_ID) listing pathway crosstalk
//     pairs, read with [ReadRelations] and pruned with [SelectRelations].
//   - A pathway info JSON object keyed by GS_ID, read with [ReadInfo] and
//     applied with [Info.Enrich].
package pathway
