// Package seedraw generates synthetic raw round snapshots for exercising the
// pipeline without real scraped data. The output mimics the upstream CSV
// layout: prefixed column names, mixed position vocabularies, occasional
// missing values and club name mojibake.
package seedraw

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	archetypeDivisor   = 8
)

// Constants for score generation ranges per archetype.
const (
	benchMin      = 0.0
	benchRange    = 1.0
	averageMin    = 1.0
	averageRange  = 5.0
	strongMin     = 6.0
	strongRange   = 4.0
	starMin       = 10.0
	starRange     = 8.0
	negativeMin   = -4.0
	negativeRange = 4.0
)

// Constants for archetype cases.
const (
	caseBench = iota
	caseNegative
	caseAverageA
	caseAverageB
	caseAverageC
	caseStrongA
	caseStrongB
	caseStar
)

// Price bounds in cartoletas.
const (
	priceMin   = 2.0
	priceRange = 22.0
)

// positionWire is the mixed vocabulary the upstream files actually use:
// numeric codes in some seasons, abbreviations in others.
var positionWire = []string{"1", "2", "3", "4", "5", "6", "gol", "lat", "zag", "mei", "ata", "tec"}

// statusWire covers the known status codes plus the occasional blank.
var statusWire = []string{"7", "7", "7", "2", "3", "5", "6", ""}

// clubWire mixes clean names, abbreviations and the mojibake seen in
// older snapshot years.
var clubWire = []string{
	"Flamengo", "Palmeiras", "FLA", "PAL", "SAO",
	"AmÃ©rica-MG", "AtlÃ©tico-GO", "São Paulo", "Grêmio", "CAM",
}

// randomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomIndex(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// playerRow is one synthetic observation in wire format.
type playerRow struct {
	atletaID string
	apelido  string
	nome     string
	clubeID  string
	clube    string
	posicao  string
	status   string
	pontos   string
	preco    string
	variacao string
	media    string
	jogos    string
	scouts   []string
}

// generateRow builds one player observation. Roughly one row in twenty gets
// a blank score, mirroring players who did not enter the match.
func generateRow(playerIdx, round int, scoutCols []string) playerRow {
	score := generateScore()
	pontos := strconv.FormatFloat(score, 'f', 2, 64)
	if randomIndex(20) == 0 {
		pontos = ""
	}

	scouts := make([]string, len(scoutCols))
	for i := range scouts {
		if randomIndex(4) == 0 {
			scouts[i] = strconv.Itoa(randomIndex(3))
		}
	}

	id := strconv.Itoa(30000 + playerIdx)
	return playerRow{
		atletaID: id,
		apelido:  "Jogador " + id,
		nome:     "Nome Completo " + id,
		clubeID:  strconv.Itoa(260 + playerIdx%20),
		clube:    clubWire[randomIndex(len(clubWire))],
		posicao:  positionWire[randomIndex(len(positionWire))],
		status:   statusWire[randomIndex(len(statusWire))],
		pontos:   pontos,
		preco:    strconv.FormatFloat(priceMin+randomFloat()*priceRange, 'f', 2, 64),
		variacao: strconv.FormatFloat(-2.0+randomFloat()*4.0, 'f', 2, 64),
		media:    strconv.FormatFloat(score/float64(round), 'f', 2, 64),
		jogos:    strconv.Itoa(round),
		scouts:   scouts,
	}
}

// generateScore draws from archetype distributions so the seeded data has
// the long right tail real rounds show.
func generateScore() float64 {
	switch randomIndex(archetypeDivisor) {
	case caseBench:
		return benchMin + randomFloat()*benchRange
	case caseNegative:
		return negativeMin + randomFloat()*negativeRange
	case caseAverageA, caseAverageB, caseAverageC:
		return averageMin + randomFloat()*averageRange
	case caseStrongA, caseStrongB:
		return strongMin + randomFloat()*strongRange
	case caseStar:
		return starMin + randomFloat()*starRange
	default:
		return averageMin + randomFloat()*averageRange
	}
}
