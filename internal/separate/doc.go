package separate

// Package separate implements the upload-and-separate pipeline against the
// stem separation server. It manages job lifecycle, transfer progress
// propagation to the UI, response contract validation, and stem retrieval.
