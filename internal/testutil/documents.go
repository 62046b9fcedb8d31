package testutil

// Subtitle document fixtures shared by parser, library, and handler tests.

// TwoCueDocument is a well-formed SRT-style document: cue "A" over [0,2] and
// cue "B" over [3,5], with numeric cue-index lines preceding each timing line.
const TwoCueDocument = `1
00:00:00.000 --> 00:00:02.000
A

2
00:00:03.000 --> 00:00:05.000
B
`

// MalformedMiddleDocument has three blocks; the middle block carries a
// non-numeric timestamp and must be dropped without affecting its neighbors.
const MalformedMiddleDocument = `00:00:00.000 --> 00:00:02.000
first

00:00:xx.000 --> 00:00:04.000
broken

00:00:05.000 --> 00:00:07.000
third
`

// OverlappingDocument holds two overlapping cues; lookups inside the overlap
// must return the first cue in document order.
const OverlappingDocument = `00:00:00.000 --> 00:00:05.000
A

00:00:02.000 --> 00:00:06.000
B
`

// ShortTimestampDocument uses the MM:SS.mmm form with hours omitted.
const ShortTimestampDocument = `01:30.500 --> 01:32.250
ninety seconds in
`

// MultilineDocument carries a caption spanning two lines that must be joined
// with an internal newline.
const MultilineDocument = `00:00:01.000 --> 00:00:03.000
line one
line two
`

// HeaderedDocument starts with format boilerplate that is not a timing line
// and must be skipped.
const HeaderedDocument = `WEBVTT

NOTE generated by tooling

00:00:01.000 --> 00:00:02.000
hello
`
