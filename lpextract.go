// Package lpextract extracts structured marketing content from landing
// pages. It fetches pages with a stealth browser (falling back to a spoofed
// HTTP client), stabilizes dynamic content, extracts platform-aware text and
// image candidates, preprocesses markup for language-model consumption, and
// runs a structured extraction with a deterministic confidence score.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, gemini/, sqlite/).
package lpextract
