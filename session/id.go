package session

import (
	"math/rand"
	"sync"
	"time"
)

// IDLength is the length of the ids generated for new sessions.
const IDLength = 20

type lockedRandSource struct {
	lock sync.Mutex
	src  rand.Source
}

// rnd is a source of random numbers safe for concurrent use by multiple goroutines
var rnd = rand.New(&lockedRandSource{src: rand.NewSource(time.Now().UnixNano())})

func (r *lockedRandSource) Int63() int64 {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.src.Int63()
}

func (r *lockedRandSource) Seed(seed int64) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.src.Seed(seed)
}

// NewID returns a random alphanumeric session id.
func NewID() string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	str := make([]byte, IDLength)
	for i := range str {
		str[i] = chars[rnd.Intn(len(chars))]
	}
	return string(str)
}
