package test

import (
	"testing"

	"github.com/ab180/carrierdelay/test/testutils"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCustomPartitioner(t *testing.T) {
	Convey("When running stage with custom partitioner", t, func() {
		p := CustomPartitionerTest()

		Convey("It should assign rows with its designated partitions", func() {
			res, err := p.RunAndCollect(testutils.ContextWithTimeout())
			So(err, ShouldBeNil)

			rows := testutils.GroupRowsByKey(res.Outputs)
			So(rows, ShouldHaveLength, 2)
			So(rows["1"], ShouldHaveLength, 2)
			So(rows["2"], ShouldHaveLength, 2)

			So(testutils.StringValues(rows["1"]), ShouldContain, "key1-1")
			So(testutils.StringValues(rows["1"]), ShouldContain, "key1-2")
			So(testutils.StringValues(rows["2"]), ShouldContain, "key2-1")
			So(testutils.StringValues(rows["2"]), ShouldContain, "key2-2")
		})
	})
}
