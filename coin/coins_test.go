package coin

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theconstruct/settle/errors"
)

func TestCoinsValidation(t *testing.T) {
	Convey("Given a list of coins", t, func() {
		Convey("unique denominations in any order are valid", func() {
			cs := Coins{NewCoinp(100, "usd"), NewCoinp(5, "eur")}
			So(cs.Validate(), ShouldBeNil)
			So(cs.IsPositive(), ShouldBeTrue)
			So(cs.String(), ShouldEqual, "100usd, 5eur")
		})

		Convey("a repeated denomination is rejected", func() {
			cs := Coins{NewCoinp(1, "usd"), NewCoinp(2, "usd")}
			So(errors.ErrDuplicate.Is(cs.Validate()), ShouldBeTrue)
		})

		Convey("a nil coin is rejected", func() {
			cs := Coins{NewCoinp(1, "usd"), nil}
			So(errors.ErrEmpty.Is(cs.Validate()), ShouldBeTrue)
			So(cs.IsPositive(), ShouldBeFalse)
		})

		Convey("an empty list is valid but not positive", func() {
			So(Coins(nil).Validate(), ShouldBeNil)
			So(Coins(nil).IsPositive(), ShouldBeFalse)
			So(Coins(nil).IsEmpty(), ShouldBeTrue)
		})

		Convey("a single zero amount makes the list not positive", func() {
			cs := Coins{NewCoinp(1, "usd"), NewCoinp(0, "eur")}
			So(cs.Validate(), ShouldBeNil)
			So(cs.IsPositive(), ShouldBeFalse)
		})
	})
}

func TestCoinsHelpers(t *testing.T) {
	Convey("Working with coin lists", t, func() {
		cs := Coins{NewCoinp(100, "usd"), NewCoinp(5, "eur")}

		Convey("clones are deep and equal", func() {
			cpy := cs.Clone()
			So(cpy.Equals(cs), ShouldBeTrue)
			cpy[0].Amount = "1"
			So(cpy.Equals(cs), ShouldBeFalse)
			So(cs[0].Amount, ShouldEqual, "100")
		})

		Convey("order matters for equality", func() {
			swapped := Coins{cs[1], cs[0]}
			So(swapped.Equals(cs), ShouldBeFalse)
		})

		Convey("totals are computed per denomination", func() {
			totals, err := Coins{NewCoinp(1, "usd"), NewCoinp(2, "eur"), NewCoinp(3, "usd")}.Totals()
			So(err, ShouldBeNil)
			So(totals["usd"].String(), ShouldEqual, "4")
			So(totals["eur"].String(), ShouldEqual, "2")
		})

		Convey("parsing keeps the given order", func() {
			parsed, err := ParseCoins("5eur, 100usd")
			So(err, ShouldBeNil)
			So(parsed.Equals(Coins{NewCoinp(5, "eur"), NewCoinp(100, "usd")}), ShouldBeTrue)

			empty, err := ParseCoins(" ")
			So(err, ShouldBeNil)
			So(empty, ShouldBeNil)
		})
	})
}
