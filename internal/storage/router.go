package storage

import (
	"encoding/json"
	"log"
)

// Router fans persistence writes out to the configured backends. The
// strategy is fixed when the router is built: if a cloud store was
// reachable at startup every progress write goes through a cloud
// merge-on-write and is mirrored locally; otherwise everything is local.
// There is no reconnect during the process lifetime.
//
// Cloud writes run asynchronously. Two in-flight writes for the same
// email can race between their read and upsert; the merge narrows but
// does not close that window, and the overall upsert is last-write-wins.
type Router struct {
	local *LocalStore
	cloud *CloudStore // nil in local-only mode
}

// NewRouter builds a router over the local store and an optional cloud
// store.
func NewRouter(local *LocalStore, cloud *CloudStore) *Router {
	return &Router{local: local, cloud: cloud}
}

// Online reports whether the cloud backend is in use
func (r *Router) Online() bool {
	return r.cloud != nil
}

// Local exposes the local store for login lookups and reminder scans
func (r *Router) Local() *LocalStore {
	return r.local
}

// Cloud exposes the cloud store, nil in local-only mode
func (r *Router) Cloud() *CloudStore {
	return r.cloud
}

// Persist applies a partial progress update for an email. The local
// mirror is written synchronously; the cloud merge-on-write is fired in
// the background and its failure is logged, never surfaced.
func (r *Router) Persist(email string, update map[string]interface{}) error {
	if r.cloud != nil {
		go r.syncToCloud(email, update)
	}

	base := map[string]interface{}{}
	account, err := r.local.GetAccount(email)
	if err != nil {
		return err
	}
	if account != nil {
		base, err = MemoryToMap(account.Memory)
		if err != nil {
			return err
		}
	}
	mem, err := MemoryFromMap(MergeMemory(base, update))
	if err != nil {
		return err
	}
	return r.local.SaveMemory(email, mem)
}

// PersistCollection stores a local-first collection (notes, chat
// sessions or the active plan). Collections are never synchronized to
// the cloud.
func (r *Router) PersistCollection(email, name string, value interface{}) error {
	return r.local.SaveCollection(email, name, value)
}

// syncToCloud performs the read-merge-upsert sequence against the cloud
// record. Not transactional: a concurrent writer can slip between the
// read and the upsert.
func (r *Router) syncToCloud(email string, update map[string]interface{}) {
	base := map[string]interface{}{}
	record, err := r.cloud.GetRecord(email)
	if err != nil {
		log.Printf("cloud sync failed for %s: %v", email, err)
		return
	}
	if record != nil && len(record.Memory) > 0 {
		if err := json.Unmarshal(record.Memory, &base); err != nil {
			log.Printf("cloud sync: ignoring unreadable remote memory for %s: %v", email, err)
			base = map[string]interface{}{}
		}
	}

	merged := MergeMemory(base, update)
	memoryJSON, err := json.Marshal(merged)
	if err != nil {
		log.Printf("cloud sync failed for %s: %v", email, err)
		return
	}

	name := ""
	if n, ok := merged["name"].(string); ok {
		name = n
	}
	if err := r.cloud.UpsertMemory(email, name, memoryJSON); err != nil {
		log.Printf("cloud sync failed for %s: %v", email, err)
	}
}
