// meta/meta.go
package meta

// Depth is the default number of plies searched per move.
const Depth = 9

// ForkDepth is the default relative depth at which the search goes parallel.
const ForkDepth = 1

// MaxTurns stops a game that runs for too long.
const MaxTurns = 300

// Games is the default number of games per experiment matchup.
const Games = 10

// OpeningPlies is the default number of random moves opening experiment games.
const OpeningPlies = 2

const Game = "connect4"

const Mode = "play"
