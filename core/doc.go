// Package core defines the domain types shared across the lostvec pipeline.
//
// A NormalizedItem is the canonical form of an inbound lost-item report,
// produced once per message by the convert package and treated as immutable
// afterward. An OutputRecord is the embedding-bearing record handed to the
// publish target. Neither type is persisted by this service; both live only
// for the duration of processing a single message.
package core
