package schnorr

import "math/big"

// pseudoMersenne returns 2^bits - c
func pseudoMersenne(bits uint, c int64) func() *big.Int {
	return func() *big.Int {
		p := new(big.Int).Lsh(bigOne, bits)
		return p.Sub(p, big.NewInt(c))
	}
}

// Montgomery curves y^2 = x^3 + A*x^2 + x from the SafeCurves list
// (Aranha, Barreto, Pereira, Ricardini). All have B = 1 and cofactor 8.
var safeCurves = []struct {
	id    string
	p     func() *big.Int
	a     int64
	gx    int64
	gy    string
	order string
}{
	{
		id:    "M-221",
		p:     pseudoMersenne(221, 3),
		a:     117050,
		gx:    4,
		gy:    "1630203008552496124843674615123983630541969261591546559209027208557",
		order: "421249166674228746791672110734682167926895081980396304944335052891",
	},
	{
		id:    "M-383",
		p:     pseudoMersenne(383, 187),
		a:     2065150,
		gx:    12,
		gy:    "4737623401891753997660546300375902576839617167257703725630389791524463565757299203154901655432096558642117242906494",
		order: "2462625387274654950767440006258975862817483704404090416746934574041288984234680883008327183083615266784870011007447",
	},
	{
		id:    "M-511",
		p:     pseudoMersenne(511, 187),
		a:     530438,
		gx:    5,
		gy:    "2500410645565072423368981149139213252211568685173608590070979264248275228603899706950518127817176591878667784247582124505430745177116625808811349787373477",
		order: "837987995621412318723376562387865382967460363787024586107722590232610251879607410804876779383055508762141059258497448934987052508775626162460930737942299",
	},
}
