package repository

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMoney(t *testing.T) {
	Convey("Given float scores and prices", t, func() {
		Convey("Then values round to two decimals", func() {
			So(money(10.456).String(), ShouldEqual, "10.46")
			So(money(-3.141).String(), ShouldEqual, "-3.14")
			So(money(0).String(), ShouldEqual, "0")
		})

		Convey("Then binary float noise does not leak through", func() {
			So(money(0.1+0.2).String(), ShouldEqual, "0.3")
		})
	})
}

func TestNewPostgresStoreRejectsBadDSN(t *testing.T) {
	Convey("Given an unparseable connection string", t, func() {
		store, err := NewPostgresStore(context.Background(), "://not-a-dsn")

		Convey("Then the connect sentinel is returned", func() {
			So(store, ShouldBeNil)
			So(errors.Is(err, ErrConnect), ShouldBeTrue)
		})
	})
}
