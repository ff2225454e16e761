// Package service implements the study engine's application services:
// flashcard management, the study session lifecycle, practice recording,
// and statistics aggregation. Services orchestrate domain entities and
// store collaborators, and publish domain events consumed by the
// statistics aggregator and the activity log.
package service
