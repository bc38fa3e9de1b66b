package transpile

// Prelude is runtime support emitted ahead of every output.
// Array.prototype.remove deletes every occurrence of each argument from
// the array in place and returns the array.
const Prelude = `
Array.prototype.remove = function() {
    var what, a = arguments, L = a.length, ax;
    while (L && this.length) {
        what = a[--L];
        while ((ax = this.indexOf(what)) !== -1) {
            this.splice(ax, 1);
        }
    }
    return this;
};`

const toolName = "sharpjs"
