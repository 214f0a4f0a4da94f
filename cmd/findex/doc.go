// Command findex runs the findex subtitle API server and offers local tools
// around it: cleaning subtitle files, fetching subtitles or metadata for a
// single video, inspecting the request journal and checking dependencies.
package main
