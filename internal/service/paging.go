package service

// pageWindow translates the from/size query pair into limit/offset. from is a
// page-index hint, not a row offset: from>0 selects page from/size (integer
// division), so from=20,size=10 lands on page 2. Callers validate from>=0 and
// size>0 before reaching here.
func pageWindow(from, size int64) (limit, offset int64) {
	var page int64
	if from > 0 {
		page = from / size
	}
	return size, page * size
}
