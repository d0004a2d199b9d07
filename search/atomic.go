package search

import "sync/atomic"

func atomicStoreStatus(s *Status, v Status) { atomic.StoreInt32((*int32)(s), int32(v)) }
func atomicLoadStatus(s *Status) Status     { return Status(atomic.LoadInt32((*int32)(s))) }
