// Package blackjack holds the table-independent pieces of the game: cards,
// the shoe, hand evaluation, rule configuration and settlement results.
//
// Nothing in this package is safe for concurrent use on its own. The engine in
// internal/game owns a Shoe and its hands and serialises access to them.
//
// # Hand values
//
// Aces count eleven until the total goes over 21, then drop to one each in
// turn:
//
//	v, soft := blackjack.Evaluate(blackjack.MustParseCards("As 6h"))   // 17, true
//	v, soft = blackjack.Evaluate(blackjack.MustParseCards("As 6h 9c")) // 16, false
//
// # Deterministic shoes
//
// Shoes shuffle with a caller supplied *rand.Rand, so a fixed seed reproduces
// the same order. For scripted scenarios a shoe can be stacked:
//
//	shoe := blackjack.NewStackedShoe(1, randutil.New(1), blackjack.MustParseCards("8h 6c 7d Ts"))
package blackjack
