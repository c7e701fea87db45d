// Package automation reads controller lanes from Standard MIDI Files and
// replays them as host automation on a parameter Set.
//
// Load maps control change numbers to parameter IDs and converts every
// event to an absolute sample position, following the file's tempo map.
// A Player applies the due points between render calls, as a host would
// from its automation thread.
package automation
