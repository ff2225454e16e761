// Package events defines the domain events that flow from the core study
// operations to their consumers (the statistics aggregator and the activity
// log), together with a minimal emitter/handler contract. Services publish
// events without direct knowledge of who consumes them.
package events
