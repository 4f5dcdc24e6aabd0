package wordbank

import "math/rand"

// Entry pairs a target word with the words players are not allowed to
// use when describing it.
type Entry struct {
	Word       string
	Exclusions []string
}

// Words is a curated list of image-prompt targets. Exclusions are the
// obvious giveaways for each word.
var Words = []Entry{
	{Word: "dragon", Exclusions: []string{"fire", "wings", "scales", "lizard"}},
	{Word: "lighthouse", Exclusions: []string{"light", "house", "sea", "tower"}},
	{Word: "volcano", Exclusions: []string{"lava", "eruption", "mountain", "magma"}},
	{Word: "astronaut", Exclusions: []string{"space", "suit", "nasa", "moon"}},
	{Word: "pirate", Exclusions: []string{"ship", "treasure", "parrot", "eyepatch"}},
	{Word: "waterfall", Exclusions: []string{"water", "fall", "river", "cliff"}},
	{Word: "robot", Exclusions: []string{"machine", "metal", "android", "ai"}},
	{Word: "castle", Exclusions: []string{"king", "tower", "moat", "medieval"}},
	{Word: "jellyfish", Exclusions: []string{"jelly", "fish", "tentacle", "ocean"}},
	{Word: "tornado", Exclusions: []string{"wind", "storm", "spin", "funnel"}},
	{Word: "submarine", Exclusions: []string{"underwater", "boat", "periscope", "ocean"}},
	{Word: "wizard", Exclusions: []string{"magic", "wand", "spell", "hat"}},
	{Word: "carousel", Exclusions: []string{"horse", "ride", "spin", "fair"}},
	{Word: "campfire", Exclusions: []string{"camp", "fire", "flame", "marshmallow"}},
	{Word: "glacier", Exclusions: []string{"ice", "frozen", "cold", "melt"}},
	{Word: "scarecrow", Exclusions: []string{"scare", "crow", "straw", "field"}},
	{Word: "origami", Exclusions: []string{"paper", "fold", "crane", "japanese"}},
	{Word: "telescope", Exclusions: []string{"stars", "lens", "see", "astronomy"}},
	{Word: "mermaid", Exclusions: []string{"fish", "tail", "sea", "siren"}},
	{Word: "avalanche", Exclusions: []string{"snow", "mountain", "slide", "bury"}},
	{Word: "greenhouse", Exclusions: []string{"green", "house", "plants", "glass"}},
	{Word: "skyscraper", Exclusions: []string{"sky", "tall", "building", "city"}},
	{Word: "hourglass", Exclusions: []string{"hour", "glass", "sand", "time"}},
	{Word: "windmill", Exclusions: []string{"wind", "mill", "blades", "dutch"}},
	{Word: "unicorn", Exclusions: []string{"horn", "horse", "rainbow", "magical"}},
	{Word: "iceberg", Exclusions: []string{"ice", "berg", "titanic", "floating"}},
	{Word: "ninja", Exclusions: []string{"stealth", "sword", "black", "japanese"}},
	{Word: "cactus", Exclusions: []string{"desert", "spines", "prickly", "plant"}},
	{Word: "fireworks", Exclusions: []string{"fire", "explode", "sky", "celebration"}},
	{Word: "labyrinth", Exclusions: []string{"maze", "lost", "walls", "minotaur"}},
	{Word: "vampire", Exclusions: []string{"blood", "fangs", "bat", "coffin"}},
	{Word: "treehouse", Exclusions: []string{"tree", "house", "ladder", "kids"}},
	{Word: "comet", Exclusions: []string{"space", "tail", "ice", "sky"}},
	{Word: "gondola", Exclusions: []string{"venice", "boat", "canal", "oar"}},
	{Word: "blacksmith", Exclusions: []string{"black", "smith", "anvil", "forge"}},
	{Word: "parachute", Exclusions: []string{"jump", "fall", "plane", "sky"}},
	{Word: "coral", Exclusions: []string{"reef", "ocean", "fish", "sea"}},
	{Word: "harpoon", Exclusions: []string{"whale", "spear", "throw", "fishing"}},
	{Word: "zeppelin", Exclusions: []string{"airship", "balloon", "float", "blimp"}},
	{Word: "catapult", Exclusions: []string{"launch", "throw", "siege", "rock"}},
}

// Pick returns one uniformly random entry.
func Pick() Entry {
	return Words[rand.Intn(len(Words))]
}

// PickN returns n entries with distinct words, chosen by shuffling the
// bank and taking a prefix. When n exceeds the bank size the shuffled
// list is reused, so words repeat rather than the call failing.
func PickN(n int) []Entry {
	if n <= 0 {
		return nil
	}
	shuffled := make([]Entry, len(Words))
	copy(shuffled, Words)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	out := make([]Entry, 0, n)
	for len(out) < n {
		remaining := n - len(out)
		if remaining >= len(shuffled) {
			out = append(out, shuffled...)
			continue
		}
		out = append(out, shuffled[:remaining]...)
	}
	return out
}
