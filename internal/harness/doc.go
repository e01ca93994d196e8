// Package harness replays scripted signal scenarios against a real
// engine wired to recording ports.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: heart_close_friend
//	description: "Close friends get a heart back"
//	pack:
//	  signals:
//	    heart:
//	      immediate:
//	        - when: { friendshipAtLeast: 2000 }
//	          do: { emote: heart-back }
//	strings:
//	  greet: "Hi @!"
//	initiator:
//	  id: farmer
//	  name: Linus
//	targets:
//	  Abigail:
//	    kind: character
//	    actorType: villager
//	    friendship: 2200
//	relationships:
//	  Abigail: 2200
//	steps:
//	  - signal: heart
//	    targets: [Abigail]
//	    expect:
//	      - "emote Abigail heart-back"
//
// Steps may also advance the clock (combo decay) or start a new in-game
// day (reward ledger reset).
//
// # Deterministic Replay
//
// Every scenario runs with a frozen deterministic clock, fixed run
// tokens, a seeded random source, and zero jitter, so the recorded
// event trace is identical across runs and safe for golden snapshot
// comparison. Events within a step are sorted, since one step may fan
// out to several targets concurrently.
package harness
