// Package identity allocates the small integer identifiers that distinguish
// live VPCS instances.
//
// Each identifier serves two purposes: it suffixes the default device name
// ("vpcs7") and it is passed to the VPCS executable as the MAC address
// offset (-m), which is why the pool is bounded at 255.
//
// The allocator is explicit shared state with an init/reset lifecycle rather
// than a package-level variable, so tests and the daemon can each own their
// own pool.
package identity
