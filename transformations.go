package carrierdelay

import (
	"sort"

	"github.com/ab180/carrierdelay/lrdd"
	"github.com/ab180/carrierdelay/output"
	"github.com/ab180/carrierdelay/transformation"
	"github.com/jinzhu/copier"
	"github.com/modern-go/reflect2"
	"github.com/pkg/errors"
)

type Filter interface {
	Filter(*lrdd.Row) bool
}

type filterTransformation struct {
	transformation.Simple
	filter Filter
	passed []*lrdd.Row
}

func (f *filterTransformation) Apply(_ transformation.Context, rows []*lrdd.Row, out output.Output) error {
	f.passed = f.passed[:0]
	for _, row := range rows {
		if f.filter.Filter(row) {
			f.passed = append(f.passed, row)
		}
	}
	return out.Write(f.passed...)
}

type Mapper interface {
	Map(Context, *lrdd.Row) (*lrdd.Row, error)
}

type mapTransformation struct {
	transformation.Simple
	mapper Mapper
}

func (m *mapTransformation) Apply(c transformation.Context, rows []*lrdd.Row, out output.Output) error {
	mapped := make([]*lrdd.Row, len(rows))
	for i, row := range rows {
		outRow, err := m.mapper.Map(c, row)
		if err != nil {
			return err
		}
		mapped[i] = outRow
	}
	return out.Write(mapped...)
}

type FlatMapper interface {
	FlatMap(Context, *lrdd.Row) ([]*lrdd.Row, error)
}

type flatMapTransformation struct {
	transformation.Simple
	flatMapper FlatMapper
}

func (f *flatMapTransformation) Apply(c transformation.Context, rows []*lrdd.Row, out output.Output) error {
	var mapped []*lrdd.Row
	for _, row := range rows {
		outRows, err := f.flatMapper.FlatMap(c, row)
		if err != nil {
			return err
		}
		mapped = append(mapped, outRows...)
	}
	return out.Write(mapped...)
}

type Sorter interface {
	IsLessThan(a, b *lrdd.Row) bool
}

// sortTransformation holds every row of the partition and emits them sorted on teardown.
// Rows which are equal keep their arrival order.
type sortTransformation struct {
	sorter Sorter
	rows   []*lrdd.Row
}

func (s *sortTransformation) Setup(transformation.Context) error {
	s.rows = nil
	return nil
}

func (s *sortTransformation) Apply(_ transformation.Context, rows []*lrdd.Row, _ output.Output) error {
	s.rows = append(s.rows, rows...)
	return nil
}

func (s *sortTransformation) Teardown(_ transformation.Context, out output.Output) error {
	// implemented sort.Interface by self
	sort.Stable(s)
	return out.Write(s.rows...)
}

func (s *sortTransformation) Len() int {
	return len(s.rows)
}

func (s *sortTransformation) Less(i, j int) bool {
	return s.sorter.IsLessThan(s.rows[i], s.rows[j])
}

func (s *sortTransformation) Swap(i, j int) {
	s.rows[i], s.rows[j] = s.rows[j], s.rows[i]
}

// Reducer folds rows sharing a key into a single value.
// InitialValue is called once for each key, before the first row of the key is reduced.
type Reducer interface {
	InitialValue(key string) interface{}
	Reduce(c Context, prev interface{}, cur *lrdd.Row) (next interface{}, err error)
}

// reduceTransformation reduces rows by key and emits a row for each key on teardown,
// in the order the keys were first seen.
type reduceTransformation struct {
	reducerPrototype Reducer
	reducers         map[string]Reducer
	state            map[string]interface{}
	keys             []string
}

func (f *reduceTransformation) Setup(transformation.Context) error {
	f.reducers = make(map[string]Reducer)
	f.state = make(map[string]interface{})
	f.keys = nil
	return nil
}

func (f *reduceTransformation) Apply(c transformation.Context, rows []*lrdd.Row, _ output.Output) error {
	for _, row := range rows {
		ctx := replacePartitionKey(c, row.Key)
		prev := f.state[row.Key]
		if f.reducers[row.Key] == nil {
			r, err := f.instantiateReducer()
			if err != nil {
				return err
			}
			f.reducers[row.Key] = r
			f.keys = append(f.keys, row.Key)
			prev = r.InitialValue(row.Key)
		}
		next, err := f.reducers[row.Key].Reduce(ctx, prev, row)
		if err != nil {
			return errors.Wrapf(err, "reduce %s", row.Key)
		}
		f.state[row.Key] = next
	}
	return nil
}

func (f *reduceTransformation) Teardown(_ transformation.Context, out output.Output) error {
	rows := make([]*lrdd.Row, len(f.keys))
	for i, key := range f.keys {
		rows[i] = lrdd.KeyValue(key, f.state[key])
	}
	return out.Write(rows...)
}

// instantiateReducer clones reducer object from prototype.
func (f *reduceTransformation) instantiateReducer() (Reducer, error) {
	typ := reflect2.TypeOf(f.reducerPrototype)
	ptrType, ok := typ.(reflect2.PtrType)
	if !ok {
		// value receivers are copied on assignment
		return f.reducerPrototype, nil
	}
	r := ptrType.Elem().New()
	if err := copier.Copy(r, f.reducerPrototype); err != nil {
		return nil, errors.Wrap(err, "instantiate reducer")
	}
	return r.(Reducer), nil
}
