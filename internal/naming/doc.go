// Package naming owns the filename conventions shared by the compression,
// analysis and plotting tooling:
//
//   - parameter suffixes on sweep outputs (_intel_q25, _nvidia_qp24,
//     _mac_qv58, plus legacy spellings from older batch scripts),
//   - resolving a compressed file back to its reference original,
//   - mirroring an input tree into the output tree,
//   - candidate and best-effort temp paths used by the smart search.
//
// The suffix grammar is a hard compatibility rule: external analysis
// tooling parses these names, so changes here break downstream charts.
package naming
