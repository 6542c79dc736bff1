package server

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRegistryEvictsOldest(t *testing.T) {
	r := newPageRegistry(3)
	for i := 0; i < 5; i++ {
		r.add(&page{id: fmt.Sprint(i)})
	}

	assert.Equal(t, 3, r.len())
	assert.Equal(t, []string{"2", "3", "4"}, r.order)
	for _, id := range []string{"0", "1"} {
		_, ok := r.get(id)
		assert.False(t, ok, id)
	}
	_, ok := r.get("4")
	assert.True(t, ok)
}

func TestPageRegistryOrderStaysBounded(t *testing.T) {
	r := newPageRegistry(3)
	for i := 0; i < 10000; i++ {
		r.add(&page{id: fmt.Sprint(i)})
	}

	assert.Equal(t, []string{"9997", "9998", "9999"}, r.order)
	assert.LessOrEqual(t, cap(r.order), 8)
}

func TestPageRegistryReAddKeepsPosition(t *testing.T) {
	r := newPageRegistry(2)
	r.add(&page{id: "a"})
	r.add(&page{id: "b"})
	r.add(&page{id: "a"})

	assert.Equal(t, 2, r.len())
	assert.Equal(t, []string{"a", "b"}, r.order)
}
