/*
Copyright © 2026 the Nemesis authors.
This file is part of Nemesis.

Nemesis is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Nemesis is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Nemesis.  If not, see <http://www.gnu.org/licenses/>.
*/

package nemesis

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/ctessum/cdf"
	"github.com/ctessum/requestcache"
)

// SideSet holds the contents of one side set.
type SideSet struct {
	SideSetParams
	Elems, Sides []int
	DistFact     []float64
}

// Reader provides cached read-only access to the side sets of a mesh file.
type Reader struct {
	f *File

	// CacheSize specifies the number of side sets to be held in the memory
	// cache. The default is 100. CacheSize can only be changed before the
	// Reader has been used to read side sets for the first time.
	CacheSize int

	cache     *requestcache.Cache
	cacheInit sync.Once
}

// NewReader creates a new side set reader from the mesh file in r. The
// file must not be modified while the Reader is in use.
func NewReader(r cdf.ReaderWriterAt) (*Reader, error) {
	f, err := Open(r)
	if err != nil {
		return nil, err
	}
	return &Reader{f: f, CacheSize: 100}, nil
}

// File returns the file that r reads from.
func (r *Reader) File() *File { return r.f }

// sideSetResult carries errors through the cache so that failed
// requests are not repeated against the file.
type sideSetResult struct {
	ss  *SideSet
	err error
}

// SideSet returns the contents of side set id. NULL side sets are
// returned with empty lists and no error. This function uses a cache with
// the size specified by the CacheSize attribute of the receiver and is
// concurrency-safe. Users desiring to make changes to the returned values
// should make a copy first to avoid inadvertently editing the cached results.
func (r *Reader) SideSet(id int) (*SideSet, error) {
	r.cacheInit.Do(func() {
		r.cache = requestcache.NewCache(func(ctx context.Context, request interface{}) (interface{}, error) {
			ss, err := r.sideSet(request.(int))
			return &sideSetResult{ss: ss, err: err}, nil
		}, runtime.GOMAXPROCS(-1),
			requestcache.Deduplicate(), requestcache.Memory(r.CacheSize))
	})
	req := r.cache.NewRequest(context.TODO(), id, fmt.Sprint(id))
	result, err := req.Result()
	if err != nil {
		return nil, err
	}
	res := result.(*sideSetResult)
	return res.ss, res.err
}

func (r *Reader) sideSet(id int) (*SideSet, error) {
	p, err := r.f.SideSetParams(id)
	if err != nil {
		return nil, err
	}
	ss := &SideSet{SideSetParams: p}
	if p.Null() {
		return ss, nil
	}
	if ss.Elems, ss.Sides, err = r.f.GetSideSet(id); err != nil {
		return nil, err
	}
	if p.NumDistFact > 0 {
		if ss.DistFact, err = r.f.GetSideSetDistFact(id); err != nil {
			return nil, err
		}
	}
	return ss, nil
}
