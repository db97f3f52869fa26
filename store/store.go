// Package store provides the storage collaborators behind the ledger: an
// in-memory store for tests and throwaway serving, and a SQLite store for
// durable data. Both implement ledger.Store.
package store

import "daybook/ledger"

// pageBounds computes paging metadata and the slice bounds for one page.
// Page zero disables paging and returns the whole result set as page one.
func pageBounds(total, page, perPage int) (offset, limit, totalPages, currentPage int) {
	if page <= 0 {
		return 0, total, 1, 1
	}

	if perPage <= 0 {
		perPage = ledger.DefaultPerPage
	}

	totalPages = (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	offset = (page - 1) * perPage
	limit = perPage
	if offset+limit > total {
		limit = total - offset
	}
	return offset, limit, totalPages, page
}
