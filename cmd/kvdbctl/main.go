// main.go -- kvdbctl: a small command line front-end for go-kvdb
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

// kvdbctl is an example of using go-kvdb from the command line: get, put,
// delete, dump and fingerprint operations against a fixed-width key/value
// database file.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	kvdb "github.com/opencoff/go-kvdb"
	flag "github.com/opencoff/pflag"
)

func main() {
	var hashTableSize uint64
	var keySize uint64
	var valueSize uint64
	var modeName string
	var cacheSize int
	var keyHex string
	var keyString string
	var valueHex string

	usage := fmt.Sprintf("%s [options] CMD DBFILE [args...]", os.Args[0])

	flag.Uint64VarP(&hashTableSize, "hash-table-size", "s", 1024, "Use `N` slots per hash page (only consulted when creating)")
	flag.Uint64VarP(&keySize, "key-size", "k", 8, "Fixed key width in `bytes` (only consulted when creating)")
	flag.Uint64VarP(&valueSize, "value-size", "V", 8, "Fixed value width in `bytes` (only consulted when creating)")
	flag.StringVarP(&modeName, "mode", "m", "rwcreat", "Open `mode`: rdonly, rdwr, rwcreat or rwreplace")
	flag.IntVarP(&cacheSize, "cache", "c", 0, "Cache up to `N` recently read records (0 disables)")
	flag.StringVar(&keyHex, "key", "", "Key, as `hex`")
	flag.StringVar(&keyString, "key-string", "", "Key, as an arbitrary `string` hashed to the key width")
	flag.StringVar(&valueHex, "value", "", "Value, as `hex`")
	flag.Usage = func() {
		fmt.Printf("kvdbctl - inspect and edit a go-kvdb file\nUsage: %s\n\nCommands: get, put, delete, dump, fingerprint, stat\n", usage)
		flag.PrintDefaults()
	}

	flag.Parse()
	args := flag.Args()

	if len(args) < 2 {
		die("need a command and a database file\nUsage: %s", usage)
	}

	cmd, fn := args[0], args[1]

	mode, err := parseMode(modeName)
	if err != nil {
		die("%s", err)
	}

	db, err := kvdb.OpenCached(fn, mode, hashTableSize, keySize, valueSize, cacheSize)
	if err != nil {
		die("can't open %s: %s", fn, err)
	}
	defer db.Close()

	key, err := resolveKey(db, keyHex, keyString)

	switch cmd {
	case "get":
		if err != nil {
			die("%s", err)
		}
		runGet(db, key)

	case "put":
		if err != nil {
			die("%s", err)
		}
		runPut(db, key, valueHex)

	case "delete":
		if err != nil {
			die("%s", err)
		}
		runDelete(db, key)

	case "dump":
		runDump(db)

	case "fingerprint":
		runFingerprint(db)

	case "stat":
		runStat(db)

	default:
		die("unknown command %q", cmd)
	}
}

func resolveKey(db *kvdb.Database, keyHex, keyString string) ([]byte, error) {
	switch {
	case keyString != "":
		return stringToKey(keyString, int(db.KeySize())), nil
	case keyHex != "":
		b, err := hex.DecodeString(keyHex)
		if err != nil {
			return nil, fmt.Errorf("bad --key hex: %s", err)
		}
		if uint64(len(b)) != db.KeySize() {
			return nil, fmt.Errorf("--key is %d bytes, want %d", len(b), db.KeySize())
		}
		return b, nil
	default:
		return nil, fmt.Errorf("need --key or --key-string")
	}
}

func parseMode(name string) (kvdb.OpenMode, error) {
	switch name {
	case "rdonly":
		return kvdb.RDONLY, nil
	case "rdwr":
		return kvdb.RDWR, nil
	case "rwcreat":
		return kvdb.RWCREAT, nil
	case "rwreplace":
		return kvdb.RWREPLACE, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", name)
	}
}

func runGet(db *kvdb.Database, key []byte) {
	v, err := db.Get(key)
	if err != nil {
		if err == kvdb.ErrNotFound {
			fmt.Println("not found")
			os.Exit(1)
		}
		die("get: %s", err)
	}
	fmt.Println(hex.EncodeToString(v))
}

func runPut(db *kvdb.Database, key []byte, valueHex string) {
	v, err := hex.DecodeString(valueHex)
	if err != nil {
		die("bad --value hex: %s", err)
	}
	if uint64(len(v)) != db.ValueSize() {
		die("--value is %d bytes, want %d", len(v), db.ValueSize())
	}
	if err := db.Put(key, v); err != nil {
		die("put: %s", err)
	}
}

func runDelete(db *kvdb.Database, key []byte) {
	if err := db.Delete(key); err != nil {
		die("delete: %s", err)
	}
}

func runDump(db *kvdb.Database) {
	it := db.Iterator()
	for {
		k, v, ok, err := it.Next()
		if err != nil {
			die("dump: %s", err)
		}
		if !ok {
			break
		}
		fmt.Printf("%s %s\n", hex.EncodeToString(k), hex.EncodeToString(v))
	}
}

func runFingerprint(db *kvdb.Database) {
	h, err := kvdb.Fingerprint(db)
	if err != nil {
		die("fingerprint: %s", err)
	}
	fmt.Printf("%016x\n", h)
}

func runStat(db *kvdb.Database) {
	fmt.Printf("hash_table_size: %d\n", db.HashTableSize())
	fmt.Printf("key_size: %d\n", db.KeySize())
	fmt.Printf("value_size: %d\n", db.ValueSize())
}

func die(f string, v ...interface{}) {
	warn(f, v...)
	os.Exit(1)
}

func warn(f string, v ...interface{}) {
	z := fmt.Sprintf("%s: %s", os.Args[0], f)
	s := fmt.Sprintf(z, v...)
	if n := len(s); s[n-1] != '\n' {
		s += "\n"
	}
	os.Stderr.WriteString(s)
}
